package isa

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("JSON?", true, jsonValid)
	reg("JSON/OBJECT?", true, jsonIsKind(func(v interface{}) bool { _, ok := v.(map[string]interface{}); return ok }))
	reg("JSON/ARRAY?", true, jsonIsKind(func(v interface{}) bool { _, ok := v.([]interface{}); return ok }))
	reg("JSON/STRING?", true, jsonIsKind(func(v interface{}) bool { _, ok := v.(string); return ok }))
	reg("JSON/NUMBER?", true, jsonIsKind(func(v interface{}) bool { _, ok := v.(float64); return ok }))
	reg("JSON/BOOLEAN?", true, jsonIsKind(func(v interface{}) bool { _, ok := v.(bool); return ok }))
	reg("JSON/NULL?", true, jsonIsKind(func(v interface{}) bool { return v == nil }))
	reg("JSON/HAS?", true, jsonHas)
	reg("JSON/GET", true, jsonGet)
	reg("JSON/SET", true, jsonSet)
	reg("JSON/EMPTY", true, jsonEmpty)
	reg("JSON/STRING->", true, jsonFromString)
	reg("JSON/->STRING", true, jsonToString)
}

func jsonValid(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(json.Valid(v)))
	return nil
}

func jsonIsKind(pred func(interface{}) bool) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		var decoded interface{}
		if unmarshalErr := json.Unmarshal(v, &decoded); unmarshalErr != nil {
			return pumpkindb.NewInvalidValue(v)
		}
		env.Stack.Push(pumpkindb.FromBool(pred(decoded)))
		return nil
	}
}

func jsonHas(_ context.Context, env *pumpkindb.Environment) error {
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	obj, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	m, decErr := decodeObject(obj)
	if decErr != nil {
		return decErr
	}
	_, ok := m[string(key)]
	env.Stack.Push(pumpkindb.FromBool(ok))
	return nil
}

func jsonGet(_ context.Context, env *pumpkindb.Environment) error {
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	obj, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	m, decErr := decodeObject(obj)
	if decErr != nil {
		return decErr
	}
	val, ok := m[string(key)]
	if !ok {
		return pumpkindb.NewUnknownKey(key)
	}
	encoded, marshalErr := json.Marshal(val)
	if marshalErr != nil {
		return pumpkindb.NewInvalidValue(obj)
	}
	env.Stack.Push(pumpkindb.Value(encoded))
	return nil
}

func jsonSet(_ context.Context, env *pumpkindb.Environment) error {
	value, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	obj, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	m, decErr := decodeObject(obj)
	if decErr != nil {
		return decErr
	}
	var decodedValue interface{}
	if unmarshalErr := json.Unmarshal(value, &decodedValue); unmarshalErr != nil {
		return pumpkindb.NewInvalidValue(value)
	}
	m[string(key)] = decodedValue
	encoded, marshalErr := json.Marshal(m)
	if marshalErr != nil {
		return pumpkindb.NewInvalidValue(obj)
	}
	env.Stack.Push(pumpkindb.Value(encoded))
	return nil
}

func jsonEmpty(_ context.Context, env *pumpkindb.Environment) error {
	env.Stack.Push(pumpkindb.Value("{}"))
	return nil
}

func jsonFromString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	encoded, marshalErr := json.Marshal(string(v))
	if marshalErr != nil {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(pumpkindb.Value(encoded))
	return nil
}

func jsonToString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	var s string
	if unmarshalErr := json.Unmarshal(v, &s); unmarshalErr != nil {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(pumpkindb.Value(s))
	return nil
}

func decodeObject(v pumpkindb.Value) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, pumpkindb.NewInvalidValue(v)
	}
	return m, nil
}

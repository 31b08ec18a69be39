package pumpkindb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, Value("foo").Equal(Value("foo")))
	assert.False(t, Value("foo").Equal(Value("bar")))
	assert.True(t, Value(nil).Equal(Value{}))
}

func TestValueLess(t *testing.T) {
	assert.True(t, Value("a").Less(Value("b")))
	assert.False(t, Value("b").Less(Value("a")))
	assert.True(t, Value("a").Less(Value("aa")))
	assert.False(t, Value("a").Less(Value("a")))
}

func TestValueCompareTotality(t *testing.T) {
	// exactly one of Less(a,b), Equal(a,b), Less(b,a) holds for any pair,
	// the totality property spec §4.4 requires of comparisons.
	values := []Value{Value("a"), Value("ab"), Value("b"), Value(""), Value("a")}
	for _, a := range values {
		for _, b := range values {
			lt := a.Less(b)
			gt := b.Less(a)
			eq := a.Equal(b)

			count := 0
			for _, v := range []bool{lt, gt, eq} {
				if v {
					count++
				}
			}
			assert.Equal(t, 1, count)
		}
	}
}

func TestValueClone(t *testing.T) {
	v := Value("foo")
	c := v.Clone()
	assert.True(t, v.Equal(c))

	c[0] = 'b'
	assert.Equal(t, Value("foo"), v)
	assert.Equal(t, Value("boo"), c)

	assert.Nil(t, Value(nil).Clone())
}

func TestAsBoolAndFromBool(t *testing.T) {
	b, err := AsBool(FromBool(true))
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = AsBool(FromBool(false))
	assert.NoError(t, err)
	assert.False(t, b)

	_, err = AsBool(Value{0x02})
	assert.Error(t, err)

	_, err = AsBool(Value{})
	assert.Error(t, err)
}

// FILE: lixenwraith/ini/type_test.go
package ini

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseValue tests string to value coercion for every kind
func TestParseValue(t *testing.T) {
	t.Run("Unsigned", func(t *testing.T) {
		tests := []struct {
			in   string
			want uint64
		}{
			{"42", 42},
			{"+42", 42},
			{"0", 0},
			{"0b1111", 15},
			{"0b111", 7},
			{"0x3C", 60},
			{"0X3c", 60},
			{"017", 15},
			{"18446744073709551615", math.MaxUint64},
		}
		for _, tt := range tests {
			v, err := ParseValue(KindUnsigned, tt.in)
			require.NoError(t, err, tt.in)
			assert.Equal(t, KindUnsigned, v.Kind())
			got, err := v.Uint64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, tt.in)
		}
	})

	t.Run("Signed", func(t *testing.T) {
		tests := []struct {
			in   string
			want int64
		}{
			{"-1285", -1285},
			{"0b11110000", 240},
			{"-0b101", -5},
			{"-0x3C", -60},
			{"0x3C", 60},
			{"010", 8},
			{"-010", -8},
		}
		for _, tt := range tests {
			v, err := ParseValue(KindSigned, tt.in)
			require.NoError(t, err, tt.in)
			got, err := v.Int64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, tt.in)
		}
	})

	t.Run("Float", func(t *testing.T) {
		tests := []struct {
			in   string
			want float64
		}{
			{"1.23", 1.23},
			{"+4.1234565E+45", 4.1234565e45},
			{"-1.1e-6", -1.1e-6},
			{"7", 7},
		}
		for _, tt := range tests {
			v, err := ParseValue(KindFloat, tt.in)
			require.NoError(t, err, tt.in)
			got, err := v.Float64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, tt.in)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		for _, lit := range []string{"1", "t", "y", "on", "yes", "enabled"} {
			v, err := ParseValue(KindBool, lit)
			require.NoError(t, err, lit)
			b, _ := v.Bool()
			assert.True(t, b, lit)
		}
		for _, lit := range []string{"0", "f", "n", "off", "no", "disabled"} {
			v, err := ParseValue(KindBool, lit)
			require.NoError(t, err, lit)
			b, _ := v.Bool()
			assert.False(t, b, lit)
		}
		for _, lit := range []string{"true", "Yes", "ON", "", "2"} {
			_, err := ParseValue(KindBool, lit)
			assert.ErrorIs(t, err, ErrTypeMismatch, lit)
		}
	})

	t.Run("TextKinds", func(t *testing.T) {
		v, err := ParseValue(KindString, "anything at all")
		require.NoError(t, err)
		assert.Equal(t, "anything at all", v.String())

		v, err = ParseValue(KindEnum, "warn")
		require.NoError(t, err)
		assert.Equal(t, KindEnum, v.Kind())
		e, err := v.Enum()
		require.NoError(t, err)
		assert.Equal(t, Enum("warn"), e)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, kind := range []Kind{KindSigned, KindUnsigned, KindFloat} {
			_, err := ParseValue(kind, "random")
			assert.ErrorIs(t, err, ErrTypeMismatch, kind.String())
		}
		_, err := ParseValue(KindUnsigned, "-5")
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = ParseValue(KindSigned, "1_000")
		assert.ErrorIs(t, err, ErrTypeMismatch)
		for _, lit := range []string{"0o17", "0O17", "-0o17", "+0o17"} {
			for _, kind := range []Kind{KindSigned, KindUnsigned} {
				_, err := ParseValue(kind, lit)
				assert.ErrorIs(t, err, ErrTypeMismatch, "%s %s", kind, lit)
			}
		}
		_, err = ParseValue(KindSigned, "9223372036854775808")
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = ParseValue(KindUnsigned, "0b102")
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = ParseValue(Kind(42), "1")
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

// TestValueRendering tests that rendering inverts parsing
func TestValueRendering(t *testing.T) {
	assert.Equal(t, "yes", BoolValue(true).String())
	assert.Equal(t, "no", BoolValue(false).String())
	assert.Equal(t, "-3", SignedValue(-3).String())
	assert.Equal(t, "18446744073709551615", UnsignedValue(math.MaxUint64).String())
	assert.Equal(t, "1.5", FloatValue(1.5).String())
	assert.Equal(t, "tag", EnumValue("tag").String())

	values := []Value{
		BoolValue(true),
		BoolValue(false),
		SignedValue(math.MinInt64),
		UnsignedValue(12345),
		FloatValue(4.1234565e45),
		FloatValue(-1.1e-6),
		EnumValue("x y"),
		StringValue(" padded "),
	}
	for _, v := range values {
		back, err := ParseValue(v.Kind(), v.String())
		require.NoError(t, err, v.String())
		assert.True(t, v.Equal(back), v.String())
	}
}

// TestValueGetters tests kind-checked access outside validation
func TestValueGetters(t *testing.T) {
	t.Run("DecodeFromString", func(t *testing.T) {
		v := StringValue("12")
		i, err := v.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(12), i)

		u, err := As[uint64](v)
		require.NoError(t, err)
		assert.Equal(t, uint64(12), u)

		f, err := As[float64](v)
		require.NoError(t, err)
		assert.Equal(t, 12.0, f)

		_, err = v.Bool()
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("NoCrossNumericCoercion", func(t *testing.T) {
		_, err := SignedValue(5).Float64()
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = UnsignedValue(5).Int64()
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = FloatValue(5).Uint64()
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = BoolValue(true).Enum()
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("EnumToNumericFails", func(t *testing.T) {
		_, err := EnumValue("12").Int64()
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = Convert(EnumValue("12"), KindSigned)
		assert.ErrorIs(t, err, ErrTypeMismatch)

		s, err := Convert(EnumValue("12"), KindString)
		require.NoError(t, err)
		assert.Equal(t, StringValue("12"), s)
	})

	t.Run("StringTargetRenders", func(t *testing.T) {
		s, err := As[string](SignedValue(-7))
		require.NoError(t, err)
		assert.Equal(t, "-7", s)
	})

	t.Run("ValueOf", func(t *testing.T) {
		assert.Equal(t, KindBool, ValueOf(true).Kind())
		assert.Equal(t, KindSigned, ValueOf(int64(1)).Kind())
		assert.Equal(t, KindUnsigned, ValueOf(uint64(1)).Kind())
		assert.Equal(t, KindFloat, ValueOf(1.0).Kind())
		assert.Equal(t, KindEnum, ValueOf(Enum("a")).Kind())
		assert.Equal(t, KindString, ValueOf("a").Kind())
	})
}

// TestValueEqual tests kind-sensitive equality
func TestValueEqual(t *testing.T) {
	assert.True(t, SignedValue(1).Equal(SignedValue(1)))
	assert.False(t, SignedValue(1).Equal(UnsignedValue(1)))
	assert.False(t, StringValue("a").Equal(EnumValue("a")))
	assert.True(t, FloatValue(math.NaN()).Equal(FloatValue(math.NaN())))
	assert.True(t, Value{}.Equal(StringValue("")))
}

// TestParseKind tests kind name lookup
func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"string":   KindString,
		"str":      KindString,
		"bool":     KindBool,
		"Boolean":  KindBool,
		"signed":   KindSigned,
		"int64":    KindSigned,
		"unsigned": KindUnsigned,
		"uint":     KindUnsigned,
		"float":    KindFloat,
		"double":   KindFloat,
		"enum":     KindEnum,
	}
	for name, want := range tests {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKind("complex")
	assert.ErrorIs(t, err, ErrUnknownKind)

	for _, k := range []Kind{KindString, KindBool, KindSigned, KindUnsigned, KindFloat, KindEnum} {
		back, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
}

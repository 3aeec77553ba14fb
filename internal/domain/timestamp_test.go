package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillis_UnmarshalAcceptsFloatAndNull(t *testing.T) {
	var v struct {
		A Millis `json:"a"`
		B Millis `json:"b"`
		C Millis `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1700000000000,"b":1.7e12,"c":null}`), &v))
	assert.Equal(t, Millis(1700000000000), v.A)
	assert.Equal(t, Millis(1700000000000), v.B)
	assert.True(t, v.C.IsZero())
}

func TestFlexString_StringOrNumber(t *testing.T) {
	var v []FlexString
	require.NoError(t, json.Unmarshal([]byte(`["5", 4, 4.5, null]`), &v))
	assert.Equal(t, []FlexString{"5", "4", "4.5", ""}, v)

	f, ok := v[2].Float()
	assert.True(t, ok)
	assert.InDelta(t, 4.5, f, 1e-9)

	_, ok = v[3].Float()
	assert.False(t, ok)
}

func TestPeriodRecord_ContainsIsInclusive(t *testing.T) {
	p := PeriodRecord{StartDate: 100, EndDate: 200}
	assert.True(t, p.Contains(100))
	assert.True(t, p.Contains(200))
	assert.False(t, p.Contains(201))
}

func TestThread_TitleFallsBackToSender(t *testing.T) {
	assert.Equal(t, "Math", Thread{Subject: "Math", SenderFio: "Petrova"}.Title())
	assert.Equal(t, "Petrova", Thread{SenderFio: "Petrova"}.Title())
	assert.Equal(t, "No subject", Thread{}.Title())
}

func TestProfile_FullNameSkipsMissingParts(t *testing.T) {
	assert.Equal(t, "Ivanov Ivan", Profile{LastName: "Ivanov", FirstName: "Ivan"}.FullName())
}

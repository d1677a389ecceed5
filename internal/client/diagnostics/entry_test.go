package diagnostics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeData(t *testing.T) {
	assert.Nil(t, encodeData(nil))
	assert.Nil(t, encodeData(json.RawMessage(nil)))
	assert.Nil(t, encodeData(json.RawMessage("{broken")))
	assert.Equal(t, `{"a":1}`, string(encodeData(json.RawMessage(`{"a":1}`))))
	assert.Equal(t, `{"n":2}`, string(encodeData(map[string]int{"n": 2})))

	// channels cannot be encoded; the value is kept as text
	assert.Contains(t, string(encodeData(make(chan int))), "0x")
}

func TestEncodeError(t *testing.T) {
	assert.Nil(t, encodeError(nil))
	assert.JSONEq(t, `{"message":"x","name":"*errors.errorString"}`, string(encodeError(errors.New("x"))))
}

func TestEntryText_SkipsEmptyFields(t *testing.T) {
	e := Entry{
		Timestamp: "t",
		Type:      TypeInfo,
		Message:   "m",
		Data:      json.RawMessage(`""`),
		Error:     json.RawMessage(`null`),
	}
	assert.Equal(t, "[t] [INFO] m", e.Text())
}

func TestEntryText_Error(t *testing.T) {
	e := Entry{Timestamp: "t", Type: TypeError, Error: json.RawMessage(`"plain"`)}
	assert.Equal(t, "[t] [ERROR] \n  Error: \"plain\"", e.Text())
}

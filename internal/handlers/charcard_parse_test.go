package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCharCardV2(t *testing.T) {
	payload := []byte(`{"spec":"chara_card_v2","data":{"name":"Barista","description":"Runs the counter","first_mes":"Hey!","personality":"warm"}}`)

	card, err := parseCharCard(payload)
	require.NoError(t, err)
	assert.Equal(t, "Barista", card.Name)
	assert.Equal(t, "Runs the counter", card.Description)
	assert.Equal(t, "Hey!", card.FirstMes)
	assert.Equal(t, "warm", card.Personality)
}

func TestParseCharCardV1(t *testing.T) {
	payload := []byte(`{"name":"Old Style","description":"flat layout","first_mes":"hi"}`)

	card, err := parseCharCard(payload)
	require.NoError(t, err)
	assert.Equal(t, "Old Style", card.Name)
	assert.Equal(t, "hi", card.FirstMes)
}

func TestParseCharCardRejectsNameless(t *testing.T) {
	_, err := parseCharCard([]byte(`{"description":"who am I"}`))
	assert.Error(t, err)

	_, err = parseCharCard([]byte(`not json`))
	assert.Error(t, err)
}

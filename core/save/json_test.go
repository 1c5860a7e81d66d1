package save

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDecoderDecode(t *testing.T) {
	data := []byte(`{
		"header": {"name": "Sorc", "class_id": 1, "level": 93, "hardcore": false, "expansion": true},
		"items": [
			{
				"type": "uap",
				"type_name": "Shako",
				"quality": 7,
				"level": 69,
				"unique_name": "Harlequin Crest",
				"location": "inventory"
			},
			{
				"type": "ltp",
				"quality": 2,
				"runeword_name": "Lore",
				"socketed_items": [
					{"type": "r01", "type_name": "El Rune", "quality": 2},
					{"type": "r09", "type_name": "Ort Rune", "quality": 2}
				]
			}
		],
		"merc_items": [
			{"type": "aar", "quality": 7, "ethereal": true, "unique_name": "Shaftstop"}
		]
	}`)

	file, err := NewJSONDecoder().Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "Sorc", file.Header.Name)
	assert.Equal(t, 1, file.Header.Class)
	assert.Equal(t, 93, file.Header.Level)
	assert.True(t, file.Header.Expansion)

	require.Len(t, file.Items, 2)
	assert.Equal(t, "Harlequin Crest", file.Items[0].UniqueName)
	assert.Equal(t, QualityUnique, file.Items[0].Quality)
	assert.Equal(t, "Lore", file.Items[1].RunewordName)
	require.Len(t, file.Items[1].SocketedItems, 2)
	assert.Equal(t, "r09", file.Items[1].SocketedItems[1].Type)

	require.Len(t, file.MercItems, 1)
	assert.True(t, file.MercItems[0].Ethereal)
	assert.Empty(t, file.CorpseItems)
}

func TestJSONDecoderDecodeStash(t *testing.T) {
	data := []byte(`{
		"hardcore": true,
		"shared_gold": 2500000,
		"pages": [
			{"items": [{"type": "r30", "type_name": "Ber Rune", "quality": 2}]},
			{"items": []}
		]
	}`)

	file, err := NewJSONDecoder().DecodeStash(data)
	require.NoError(t, err)

	assert.True(t, file.Hardcore)
	assert.Equal(t, 2500000, file.SharedGold)
	require.Len(t, file.Pages, 2)
	require.Len(t, file.Pages[0].Items, 1)
	assert.Equal(t, "r30", file.Pages[0].Items[0].Type)
	assert.Empty(t, file.Pages[1].Items)
}

func TestJSONDecoderMalformedInput(t *testing.T) {
	dec := NewJSONDecoder()

	_, err := dec.Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = dec.DecodeStash([]byte("{"))
	assert.Error(t, err)
}

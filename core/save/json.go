package save

import (
	"encoding/json"
	"fmt"
)

// JSONDecoder decodes character saves and shared stashes from the JSON dump
// format that save-file export tools produce. It implements both Decoder
// and StashDecoder.
type JSONDecoder struct{}

// NewJSONDecoder creates a decoder for JSON save dumps.
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

// Wire shapes of the JSON dump format.
type jsonAttribute struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Values []int  `json:"values"`
}

type jsonItem struct {
	Type            string          `json:"type"`
	TypeName        string          `json:"type_name"`
	Quality         int             `json:"quality"`
	Level           int             `json:"level"`
	Ethereal        bool            `json:"ethereal"`
	Sockets         int             `json:"total_nr_of_sockets"`
	UniqueName      string          `json:"unique_name"`
	SetName         string          `json:"set_name"`
	RareName        string          `json:"rare_name"`
	RunewordName    string          `json:"runeword_name"`
	MagicAttributes []jsonAttribute `json:"magic_attributes"`
	SocketedItems   []jsonItem      `json:"socketed_items"`
	Location        string          `json:"location"`
}

type jsonHeader struct {
	Name       string `json:"name"`
	Class      int    `json:"class_id"`
	Level      int    `json:"level"`
	Hardcore   bool   `json:"hardcore"`
	Expansion  bool   `json:"expansion"`
	LastPlayed int64  `json:"last_played"`
}

type jsonCharacter struct {
	Header      jsonHeader `json:"header"`
	Items       []jsonItem `json:"items"`
	MercItems   []jsonItem `json:"merc_items"`
	CorpseItems []jsonItem `json:"corpse_items"`
}

type jsonStashPage struct {
	Items []jsonItem `json:"items"`
}

type jsonStash struct {
	Hardcore   bool            `json:"hardcore"`
	SharedGold int             `json:"shared_gold"`
	Pages      []jsonStashPage `json:"pages"`
}

// Decode parses a character save dump.
func (d *JSONDecoder) Decode(data []byte) (*CharacterFile, error) {
	var wire jsonCharacter
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode character dump: %w", err)
	}

	return &CharacterFile{
		Header: Header{
			Name:       wire.Header.Name,
			Class:      wire.Header.Class,
			Level:      wire.Header.Level,
			Hardcore:   wire.Header.Hardcore,
			Expansion:  wire.Header.Expansion,
			LastPlayed: wire.Header.LastPlayed,
		},
		Items:       convertItems(wire.Items),
		MercItems:   convertItems(wire.MercItems),
		CorpseItems: convertItems(wire.CorpseItems),
	}, nil
}

// DecodeStash parses a shared-stash dump.
func (d *JSONDecoder) DecodeStash(data []byte) (*StashFile, error) {
	var wire jsonStash
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode stash dump: %w", err)
	}

	file := &StashFile{
		Hardcore:   wire.Hardcore,
		SharedGold: wire.SharedGold,
	}
	for _, page := range wire.Pages {
		file.Pages = append(file.Pages, StashPage{Items: convertItems(page.Items)})
	}
	return file, nil
}

func convertItems(wire []jsonItem) []RawItem {
	if len(wire) == 0 {
		return nil
	}
	items := make([]RawItem, 0, len(wire))
	for _, w := range wire {
		item := RawItem{
			Type:         w.Type,
			TypeName:     w.TypeName,
			Quality:      w.Quality,
			Level:        w.Level,
			Ethereal:     w.Ethereal,
			Sockets:      w.Sockets,
			UniqueName:   w.UniqueName,
			SetName:      w.SetName,
			RareName:     w.RareName,
			RunewordName: w.RunewordName,
			Location:     w.Location,
		}
		for _, attr := range w.MagicAttributes {
			item.MagicAttributes = append(item.MagicAttributes, MagicAttribute{
				ID:     attr.ID,
				Name:   attr.Name,
				Values: attr.Values,
			})
		}
		item.SocketedItems = convertItems(w.SocketedItems)
		items = append(items, item)
	}
	return items
}

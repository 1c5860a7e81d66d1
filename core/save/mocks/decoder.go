package mocks

import (
	"grail-monitor/core/save"

	"github.com/stretchr/testify/mock"
)

// Decoder is a mock implementation of save.Decoder
type Decoder struct {
	mock.Mock
}

func (m *Decoder) Decode(data []byte) (*save.CharacterFile, error) {
	args := m.Called(data)
	if file, ok := args.Get(0).(*save.CharacterFile); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

// StashDecoder is a mock implementation of save.StashDecoder
type StashDecoder struct {
	mock.Mock
}

func (m *StashDecoder) DecodeStash(data []byte) (*save.StashFile, error) {
	args := m.Called(data)
	if file, ok := args.Get(0).(*save.StashFile); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

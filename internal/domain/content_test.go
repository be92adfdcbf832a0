package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSentence = "Unchecked inflation could {{c1::pose a risk::present a danger}} to growth."

func TestNewContentRecord(t *testing.T) {
	t.Parallel()

	record, err := NewContentRecord("  present a danger ", sampleSentence, "pose a threat | pose a challenge | pose a question\n")
	require.NoError(t, err)

	assert.Equal(t, "present a danger", record.Definition)
	assert.Equal(t, sampleSentence, record.Sentence)
	assert.Equal(t, "pose a threat | pose a challenge | pose a question", record.Collocations)
}

func TestContentRecordValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  ContentRecord
		wantErr error
	}{
		{
			name:   "valid",
			record: ContentRecord{Definition: "d", Sentence: sampleSentence, Collocations: "a | b | c"},
		},
		{
			name:    "missing definition",
			record:  ContentRecord{Sentence: sampleSentence, Collocations: "a | b | c"},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "blank collocations",
			record:  ContentRecord{Definition: "d", Sentence: sampleSentence, Collocations: "   "},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "empty sentence",
			record:  ContentRecord{Definition: "d", Collocations: "a | b | c"},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "sentence without cloze",
			record:  ContentRecord{Definition: "d", Sentence: "Inflation could pose a risk.", Collocations: "a | b | c"},
			wantErr: ErrMissingCloze,
		},
		{
			name:    "unterminated cloze",
			record:  ContentRecord{Definition: "d", Sentence: "It could {{c1::pose a risk.", Collocations: "a | b | c"},
			wantErr: ErrMissingCloze,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected ErrValidation, got %v", err)
		})
	}
}

func TestContentRecordValidateNamesField(t *testing.T) {
	t.Parallel()

	_, err := NewContentRecord("d", sampleSentence, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collocations")
}

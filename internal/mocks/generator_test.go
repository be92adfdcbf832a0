package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/phrazzld/scry-anki/internal/generation"
	"github.com/phrazzld/scry-anki/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()

	t.Run("Default record", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockGeneratorWithRecord(mocks.SampleRecord())

		record, err := mockGen.Generate(context.Background(), "pose a risk")

		assert.NoError(t, err)
		assert.Equal(t, mocks.SampleRecord(), record)
		assert.Equal(t, []string{"pose a risk"}, mockGen.Phrases())
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.MockGeneratorThatFails()

		record, err := mockGen.Generate(context.Background(), "pose a risk")

		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.Nil(t, record)
		assert.Len(t, mockGen.Phrases(), 1)
	})

	t.Run("Custom function", func(t *testing.T) {
		t.Parallel()

		customErr := errors.New("custom error")
		mockGen := &mocks.MockGenerator{
			GenerateFn: func(ctx context.Context, phrase string) (*domain.ContentRecord, error) {
				if phrase == "trigger error" {
					return nil, customErr
				}
				return mocks.SampleRecord(), nil
			},
		}

		_, err := mockGen.Generate(context.Background(), "trigger error")
		assert.Equal(t, customErr, err)

		record, err := mockGen.Generate(context.Background(), "fine")
		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, []string{"trigger error", "fine"}, mockGen.Phrases())
	})
}

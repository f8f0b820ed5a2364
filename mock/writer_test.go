package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/jsonextract"
	"github.com/fwojciec/jsonextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaver_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where Saver is expected
	var _ jsonextract.Saver = &mock.Saver{}
}

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var gotName, gotText string
		s := &mock.Saver{
			SaveFn: func(_ context.Context, sourceName, text string) (string, error) {
				gotName, gotText = sourceName, text
				return "/tmp/chat_extracted.txt", nil
			},
		}

		path, err := s.Save(context.Background(), "chat.json", "Name: A")

		require.NoError(t, err)
		assert.Equal(t, "/tmp/chat_extracted.txt", path)
		assert.Equal(t, "chat.json", gotName)
		assert.Equal(t, "Name: A", gotText)
	})
}

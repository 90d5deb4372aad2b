package scheduler

import (
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSpec(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	t.Run("расписание по умолчанию срабатывает каждые 10 секунд", func(t *testing.T) {
		_, err := parser.Parse("*/10 * * * * *")
		require.NoError(t, err)
	})

	t.Run("пятипольное расписание без секунд не принимается", func(t *testing.T) {
		_, err := parser.Parse("*/10 * * * *")
		assert.Error(t, err)
	})
}

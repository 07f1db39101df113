package content

import (
	"os"
	"testing"

	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{})
	os.Exit(m.Run())
}

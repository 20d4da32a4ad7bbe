package memory

import (
	"testing"

	"github.com/marmos91/elfdevice/pkg/results"
	restesting "github.com/marmos91/elfdevice/pkg/results/testing"
)

func TestMemoryResultStore(t *testing.T) {
	suite := &restesting.StoreTestSuite{
		NewStore: func(t *testing.T) results.Store {
			return NewMemoryResultStore()
		},
	}
	suite.Run(t)
}

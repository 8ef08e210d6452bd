package radiuscore_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRadiusCore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "radiuscore wire format suite")
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/exactpricing/internal/pricing/application"
)

func TestRunDemo_Pricing(t *testing.T) {
	svc := application.NewPricingService(application.DefaultOptions(), nil)
	buf := &bytes.Buffer{}

	require.NoError(t, runDemo(context.Background(), svc, buf, "pricing"))
	out := buf.String()

	assert.Contains(t, out, "== pricing ==")
	for _, want := range []string{
		"2.133368", "5.846282",
		"7.965567",
		"0.204058", "4.073262",
		"92.175704", "1.247499",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "== mesh ==")
}

func TestRunDemo_All(t *testing.T) {
	svc := application.NewPricingService(application.DefaultOptions(), nil)
	buf := &bytes.Buffer{}

	require.NoError(t, runDemo(context.Background(), svc, buf, "all"))
	out := buf.String()

	for _, section := range []string{"== pricing ==", "== parity ==", "== mesh ==", "== greeks =="} {
		assert.Contains(t, out, section)
	}
	// 网格演示的中心点与直接定价一致
	assert.Contains(t, out, "1.247499")
	// 期货看涨 Delta
	assert.Contains(t, out, "0.594629")
}

func TestRunDemo_Unknown(t *testing.T) {
	svc := application.NewPricingService(application.DefaultOptions(), nil)
	assert.Error(t, runDemo(context.Background(), svc, &bytes.Buffer{}, "binomial"))
}

func TestDemoCmd_RejectsUnknownArg(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"demo", "binomial"})
	assert.Error(t, root.Execute())
}

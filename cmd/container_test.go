package cmd

import (
	"bytes"
	"testing"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/hendrix/internal/adapter"
	"github.com/mouse-blink/hendrix/internal/controller"
	"github.com/mouse-blink/hendrix/internal/domain"
)

func TestNewInjector(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	injector := newInjector(cmd)

	wf, err := do.Invoke[domain.Workflow](injector)
	require.NoError(t, err)
	assert.NotNil(t, wf)

	display, err := do.Invoke[controller.UI](injector)
	require.NoError(t, err)
	assert.NotNil(t, display)

	store, err := do.Invoke[adapter.ReportStore](injector)
	require.NoError(t, err)
	assert.NotNil(t, store)

	again := do.MustInvoke[domain.Workflow](injector)
	assert.Same(t, wf, again, "services are singletons")
}

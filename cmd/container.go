package cmd

import (
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/adapter"
	"github.com/mouse-blink/hendrix/internal/controller"
	"github.com/mouse-blink/hendrix/internal/domain"
)

// newInjector registers the hendrix services. UI output goes to cmd.
func newInjector(cmd *cobra.Command) *do.Injector {
	injector := do.New()

	do.Provide(injector, func(_ *do.Injector) (adapter.SourceFSAdapter, error) {
		return adapter.NewLocalSourceFSAdapter(), nil
	})
	do.Provide(injector, func(_ *do.Injector) (adapter.ReportStore, error) {
		return adapter.NewReportStore(), nil
	})
	do.Provide(injector, func(_ *do.Injector) (controller.UI, error) {
		return controller.NewUI(cmd, controller.IsTTY(os.Stdout)), nil
	})
	do.Provide(injector, func(_ *do.Injector) (domain.Pipeline, error) {
		return domain.NewPipeline(), nil
	})
	do.Provide(injector, func(i *do.Injector) (domain.Workflow, error) {
		fsAdapter, err := do.Invoke[adapter.SourceFSAdapter](i)
		if err != nil {
			return nil, err
		}

		reportStore, err := do.Invoke[adapter.ReportStore](i)
		if err != nil {
			return nil, err
		}

		display, err := do.Invoke[controller.UI](i)
		if err != nil {
			return nil, err
		}

		pipeline, err := do.Invoke[domain.Pipeline](i)
		if err != nil {
			return nil, err
		}

		return domain.NewWorkflow(fsAdapter, reportStore, display, pipeline), nil
	})

	return injector
}

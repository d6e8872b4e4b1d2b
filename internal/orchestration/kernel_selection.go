package orchestration

import (
	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/config"
	"github.com/agbru/kerntune/internal/kernel"
)

// GetKernelsToRun builds the kernels selected by the configuration, in
// selection order ("all" yields the registry's sorted order). Each kernel
// computes with workers threads.
func GetKernelsToRun(cfg config.AppConfig, registry *kernel.Registry, workers int) ([]autotune.Kernel, error) {
	names := cfg.KernelNames(registry.List())
	kernels := make([]autotune.Kernel, 0, len(names))
	for _, name := range names {
		k, err := registry.Create(name, workers)
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, k)
	}
	return kernels, nil
}

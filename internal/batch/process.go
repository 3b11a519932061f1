package batch

import (
	"context"
	"log/slog"
	"path/filepath"

	"gltfix/internal/config"
	"gltfix/internal/gltf"
	"gltfix/internal/history"
	"gltfix/internal/logging"
	"gltfix/internal/preflight"
	"gltfix/internal/repair"
)

// Result captures one file's trip through the pipeline. Err is set when the
// file could not be processed at all; per-sampler problems live inside
// Report instead.
type Result struct {
	Path       string         `json:"path"`
	OutputGLTF string         `json:"output_gltf,omitempty"`
	OutputBin  string         `json:"output_bin,omitempty"`
	Report     *repair.Report `json:"report,omitempty"`
	Err        error          `json:"-"`
	Error      string         `json:"error,omitempty"`
}

// Process repairs a single scene file and writes the corrected pair.
// Empty output paths derive the defaults from the input path and the
// configured suffix. The run is journaled to store when one is provided;
// journal failures are logged, never propagated.
func Process(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *history.Store, inputPath, outGLTF, outBin string) Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	result := Result{Path: inputPath}

	scene, err := gltf.Load(inputPath)
	if err != nil {
		return result.failed(ctx, logger, store, err)
	}

	if outGLTF == "" || outBin == "" {
		derivedGLTF, derivedBin := gltf.DeriveOutputs(inputPath, cfg.Repair.OutputSuffix)
		if outGLTF == "" {
			outGLTF = derivedGLTF
		}
		if outBin == "" {
			outBin = derivedBin
		}
	}
	result.OutputGLTF = outGLTF
	result.OutputBin = outBin

	engine := repair.New(repair.Options{
		FrameRate: cfg.Repair.FrameRate,
		Threshold: cfg.Repair.CorruptionThreshold,
	}, logging.NewComponentLogger(logger, "repair"))
	result.Report = engine.Run(scene)

	if err := preflight.OutputDir(filepath.Dir(outGLTF), len(scene.Bin)); err != nil {
		return result.failed(ctx, logger, store, err)
	}
	if err := scene.Write(outGLTF, outBin); err != nil {
		return result.failed(ctx, logger, store, err)
	}

	logger.Info("scene written",
		slog.String(logging.FieldFile, inputPath),
		slog.Int("samplers_scanned", result.Report.Scanned),
		slog.Int("samplers_repaired", len(result.Report.Repaired)),
		slog.Int("samplers_failed", len(result.Report.Failures)),
		slog.Int("bytes_patched", result.Report.BytesPatched))

	journal(ctx, logger, store, &result, history.StatusOK, "")
	return result
}

func (r Result) failed(ctx context.Context, logger *slog.Logger, store *history.Store, err error) Result {
	r.Err = err
	r.Error = err.Error()
	logger.Error("scene failed",
		slog.String(logging.FieldFile, r.Path),
		logging.Error(err))
	journal(ctx, logger, store, &r, history.StatusFailed, err.Error())
	return r
}

func journal(ctx context.Context, logger *slog.Logger, store *history.Store, result *Result, status, errText string) {
	if store == nil {
		return
	}
	run := history.Run{
		SourcePath: result.Path,
		OutputPath: result.OutputGLTF,
		Status:     status,
		Error:      errText,
	}
	if result.Report != nil {
		run.Scanned = result.Report.Scanned
		run.Repaired = len(result.Report.Repaired)
		run.Rebound = len(result.Report.Rebound)
		run.Failed = len(result.Report.Failures)
		run.Anomalies = len(result.Report.Anomalies)
		run.BytesPatched = result.Report.BytesPatched
	}
	if err := store.RecordRun(ctx, &run); err != nil {
		logger.Warn("journal write failed", logging.Error(err))
		return
	}
	logger.Debug("run journaled", slog.String(logging.FieldRunID, run.RunID))
}

package processor

import (
	"context"
	"os"
)

// cleanupWorkDir removes the downloaded video unless output.keep_temp is set.
// Local inputs are never inside the work dir.
func (p *implProcessor) cleanupWorkDir(ctx context.Context, dir string) {
	if p.cfg.Output.KeepTemp {
		p.logger.Info(ctx, "Keeping temporary files: %s", dir)
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

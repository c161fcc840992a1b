package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"

	"montage/internal/services"
)

// extractFrame decodes a single video frame at the given timestamp. The seek
// runs before the input so ffmpeg lands on the nearest keyframe first.
func extractFrame(ctx context.Context, binary, source string, at float64) (image.Image, error) {
	if at < 0 {
		at = 0
	}
	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-ss", fmt.Sprintf("%.6f", at),
		"-i", source,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrSeekTimeout, "rendering", "seek",
				fmt.Sprintf("%s at %.3fs", source, at), ctx.Err())
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = source
		}
		return nil, services.Wrap(services.ErrMediaLoad, "rendering", "extract", detail, err)
	}
	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "rendering", "decode",
			fmt.Sprintf("%s at %.3fs", source, at), err)
	}
	return img, nil
}

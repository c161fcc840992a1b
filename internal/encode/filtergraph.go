package encode

import (
	"fmt"
	"strings"

	"montage/internal/audio"
)

// buildFilterGraph assembles the -filter_complex expression that reproduces
// the mixer's schedule. Input index 0 is the frame sequence; audio sources
// start at 1. Returns the graph and the output pad label.
func buildFilterGraph(clips []audio.ClipSchedule, sampleRate, channels int) (string, string) {
	if len(clips) == 0 {
		return "", ""
	}
	layout := "stereo"
	if channels == 1 {
		layout = "mono"
	}

	var graph strings.Builder
	labels := make([]string, 0, len(clips))
	for i, clip := range clips {
		label := fmt.Sprintf("a%d", i)
		labels = append(labels, "["+label+"]")
		if i > 0 {
			graph.WriteString(";")
		}
		// atrim selects [offset, offset+duration) from the source, the
		// volume stage applies the clip gain, and adelay shifts the clip
		// to its timeline start. Identical timing to Mixer.Mix.
		fmt.Fprintf(&graph,
			"[%d:a]atrim=start=%.6f:end=%.6f,asetpts=PTS-STARTPTS,volume=%.6f,aresample=%d,aformat=channel_layouts=%s,adelay=%d:all=1[%s]",
			i+1,
			clip.Offset,
			clip.Offset+clip.Duration,
			clip.Gain,
			sampleRate,
			layout,
			int(clip.Start*1000+0.5),
			label,
		)
	}

	graph.WriteString(";")
	graph.WriteString(strings.Join(labels, ""))
	fmt.Fprintf(&graph, "amix=inputs=%d:duration=longest:normalize=0[aout]", len(clips))
	return graph.String(), "[aout]"
}

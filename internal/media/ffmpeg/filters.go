package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"versecut/internal/overlay"
)

// drawtext treats backslashes and quotes specially inside quoted arguments.
var textEscaper = strings.NewReplacer(`\`, `\\`, `'`, `'\''`)

func escapeText(text string) string {
	return textEscaper.Replace(text)
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func positionExpr(position overlay.Position) string {
	switch position {
	case overlay.PositionTop:
		return "h*0.08"
	case overlay.PositionCenter:
		return "(h-text_h)/2"
	default:
		return "h-text_h-h*0.08"
	}
}

// fadeAlphaExpr builds the drawtext alpha expression that fades the text in
// over fade seconds after start and out over fade seconds before end.
func fadeAlphaExpr(start, end, fade float64) string {
	if fade*2 > end-start {
		fade = (end - start) / 2
	}
	s := formatSeconds(start)
	e := formatSeconds(end)
	f := formatSeconds(fade)
	return fmt.Sprintf("'if(lt(t,%s),0,if(lt(t,%s+%s),(t-%s)/%s,if(lt(t,%s-%s),1,(%s-t)/%s)))'", s, s, f, s, f, e, f, e, f)
}

// drawtextFilter renders one timed overlay as a drawtext filter string.
// Text expansion is disabled so %{...} sequences in quote text stay literal.
func drawtextFilter(ov overlay.Overlay, style overlay.Style) string {
	parts := []string{
		fmt.Sprintf("text='%s'", escapeText(ov.Text)),
		"expansion=none",
		fmt.Sprintf("fontsize=%d", style.FontSize),
		"fontcolor=" + style.FontColor,
		"x=(w-text_w)/2",
		"y=" + positionExpr(style.Position),
	}
	if style.FontFile != "" {
		parts = append(parts, fmt.Sprintf("fontfile='%s'", escapeText(style.FontFile)))
	}
	if box := strings.TrimSpace(style.BoxColor); box != "" && !strings.EqualFold(box, "transparent") {
		parts = append(parts, "box=1", "boxcolor="+box+"@0.5", "boxborderw=12")
	}
	if style.FadeSeconds > 0 {
		parts = append(parts, "alpha="+fadeAlphaExpr(ov.Start, ov.End(), style.FadeSeconds))
	}
	parts = append(parts, fmt.Sprintf("enable='between(t,%s,%s)'", formatSeconds(ov.Start), formatSeconds(ov.End())))
	return "drawtext=" + strings.Join(parts, ":")
}

// overlayFilterChain joins the per-overlay drawtext filters into a -vf value.
func overlayFilterChain(plan *overlay.Plan) string {
	filters := make([]string, 0, len(plan.Overlays))
	for _, ov := range plan.Overlays {
		filters = append(filters, drawtextFilter(ov, plan.Style))
	}
	return strings.Join(filters, ",")
}

// titleFilterChain builds the drawtext and fade filters for a title card.
func titleFilterChain(title overlay.Title, style overlay.Style) string {
	parts := []string{
		fmt.Sprintf("text='%s'", escapeText(title.Text)),
		"expansion=none",
		fmt.Sprintf("fontsize=%d", title.FontSize),
		"fontcolor=" + style.FontColor,
		"x=(w-text_w)/2",
		"y=(h-text_h)/2",
	}
	if style.FontFile != "" {
		parts = append(parts, fmt.Sprintf("fontfile='%s'", escapeText(style.FontFile)))
	}
	filters := []string{"drawtext=" + strings.Join(parts, ":")}
	if fade := title.FadeSeconds; fade > 0 && fade*2 <= title.Duration {
		filters = append(filters,
			fmt.Sprintf("fade=t=in:st=0:d=%s", formatSeconds(fade)),
			fmt.Sprintf("fade=t=out:st=%s:d=%s", formatSeconds(title.Duration-fade), formatSeconds(fade)),
		)
	}
	return strings.Join(filters, ",")
}

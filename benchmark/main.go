package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"
	"github.com/kdduha/burnmaster/internal/handler"
	"github.com/kdduha/burnmaster/internal/models"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		endpoint string
		runs     int
		images   []string
		session  string
	)

	cmd := &cobra.Command{
		Use:           "benchmark",
		Short:         "Measure roast latency against a running backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs <= 0 {
				return fmt.Errorf("--runs must be positive, got %d", runs)
			}

			scenarios := []Scenario{{Name: "text-only"}}
			for _, path := range images {
				scenarios = append(scenarios, Scenario{Name: filepath.Base(path), ImagePath: path})
			}

			b := &bench{client: http.DefaultClient, endpoint: endpoint, session: session}

			var results []BenchResult
			for _, sc := range scenarios {
				for i := 0; i < runs; i++ {
					res := b.run(cmd.Context(), sc, i)
					if res.Err != nil {
						log.Println("ERR:", res.Scenario, res.Err)
					} else {
						log.Printf("OK %s text=%v total=%v", res.Scenario, res.TextAfter, res.Duration)
					}
					results = append(results, res)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&endpoint, "endpoint", envOr("BENCH_ENDPOINT", "http://localhost:8080/roast/stream"), "Streaming roast endpoint")
	flags.IntVarP(&runs, "runs", "n", 3, "Requests per scenario")
	flags.StringSliceVar(&images, "image", nil, "Photo to attach; adds one scenario per file")
	flags.StringVar(&session, "session", "benchmark", "Session id sent with every request")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type bench struct {
	client   *http.Client
	endpoint string
	session  string
}

var (
	benchStyles  = []models.Style{models.StyleModernSlang, models.StyleShakespearean, models.StyleVikingSkald}
	benchFocuses = []models.Focus{models.FocusLifeChoices, models.FocusFashion, models.FocusGaming}
)

func benchSettings(i int) models.RoastSettings {
	return models.RoastSettings{
		TargetName:     "Sam",
		Context:        "always late, claims traffic",
		SavageLevel:    (30 + 25*i) % 101,
		WittyLevel:     60,
		AbsurdityLevel: (80 + 15*i) % 101,
		Style:          benchStyles[i%len(benchStyles)],
		Focus:          benchFocuses[i%len(benchFocuses)],
	}
}

func (b *bench) run(ctx context.Context, sc Scenario, i int) BenchResult {
	res := BenchResult{Scenario: sc.Name}
	settings := benchSettings(i)

	if sc.ImagePath != "" {
		raw, err := os.ReadFile(sc.ImagePath)
		if err != nil {
			res.Err = err
			return res
		}
		img := models.Image{MIMEType: http.DetectContentType(raw), Data: raw}
		settings.Image = img.DataURI()
		settings.ImageSource = models.ImageSourceUpload
		res.Size = int64(len(raw))
	}

	start := time.Now()
	res.Err = b.sendStream(ctx, settings, func(ev models.RoastEvent) error {
		switch ev.Type {
		case models.EventText:
			res.TextAfter = time.Since(start)
		case models.EventCaricature:
			res.Caricature = true
		case models.EventDone:
			if ev.Roast != nil && ev.Roast.Diagnostics != nil {
				res.Fallback = ev.Roast.Diagnostics.TextFallback || len(ev.Roast.Diagnostics.StatsFallback) > 0
			}
		}
		return nil
	})
	res.Duration = time.Since(start)
	return res
}

type streamError struct {
	Error string `json:"error"`
}

func (b *bench) sendStream(ctx context.Context, settings models.RoastSettings, onEvent func(models.RoastEvent) error) error {
	body, err := sonic.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set(handler.SessionHeader, b.session)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return readEvents(resp.Body, onEvent)
}

// readEvents walks an SSE body until EOF or an error event.
func readEvents(body io.Reader, onEvent func(models.RoastEvent) error) error {
	reader := bufio.NewReader(body)

	var event string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
			continue
		case !strings.HasPrefix(line, "data: "):
			continue
		}

		payload := strings.TrimPrefix(line, "data: ")
		if event == string(models.EventError) {
			var se streamError
			if err := sonic.UnmarshalString(payload, &se); err != nil {
				return fmt.Errorf("unreadable error event: %s", payload)
			}
			return errors.New(se.Error)
		}

		var ev models.RoastEvent
		if err := sonic.UnmarshalString(payload, &ev); err != nil {
			return err
		}
		if err := onEvent(ev); err != nil {
			return err
		}
	}
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Scenario]
		if r.Err != nil {
			a.Failed++
			m[r.Scenario] = a
			continue
		}
		a.Count++
		a.TotalText += r.TextAfter
		a.Total += r.Duration
		a.TotalBytes += r.Size
		if r.Caricature {
			a.Caricatures++
		}
		if r.Fallback {
			a.Fallbacks++
		}
		m[r.Scenario] = a
	}
	return m
}

func renderResults(results []BenchResult) string {
	agg := aggregate(results)

	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := table.NewWriter()
	tw.SetTitle("Benchmark Results")
	tw.AppendHeader(table.Row{"Scenario", "OK", "Failed", "Avg Text", "Avg Total", "Caricatures", "Fallbacks", "Avg Photo"})

	var all Agg
	for _, name := range names {
		a := agg[name]
		tw.AppendRow(aggRow(name, a))

		all.Count += a.Count
		all.Failed += a.Failed
		all.Caricatures += a.Caricatures
		all.Fallbacks += a.Fallbacks
		all.TotalText += a.TotalText
		all.Total += a.Total
		all.TotalBytes += a.TotalBytes
	}
	tw.AppendFooter(aggRow("ALL", all))

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.RenderMarkdown()
}

func aggRow(name string, a Agg) table.Row {
	if a.Count == 0 {
		return table.Row{name, 0, a.Failed, "-", "-", 0, 0, "-"}
	}
	n := time.Duration(a.Count)
	return table.Row{
		name,
		a.Count,
		a.Failed,
		(a.TotalText / n).Round(time.Millisecond),
		(a.Total / n).Round(time.Millisecond),
		a.Caricatures,
		a.Fallbacks,
		humanBytes(a.TotalBytes / int64(a.Count)),
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

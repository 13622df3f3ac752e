package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go-linktrack/internal/binding"
	"go-linktrack/internal/biz"
	"go-linktrack/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file.html>",
	Short: "Classify every anchor of an HTML page",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var (
	scanPageURL string
	scanVariant string
	scanJSON    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanPageURL, "page-url", "u", "", "URL the page was served from (required)")
	scanCmd.Flags().StringVarP(&scanVariant, "variant", "v", biz.VariantEventsPageviews, "Classification variant: downloads, events or events_pageviews")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print results as JSON lines")

	if err := scanCmd.MarkFlagRequired("page-url"); err != nil {
		panic(fmt.Sprintf("failed to mark page-url flag as required: %v", err))
	}

	rootCmd.AddCommand(scanCmd)
}

// scanResult is the outcome for a single anchor.
type scanResult struct {
	Href     string              `json:"href"`
	Category string              `json:"category"`
	Record   *domain.EventRecord `json:"record,omitempty"`
}

// countingSink counts emissions. Records are read back from each Decision.
type countingSink struct {
	events    int
	pageviews int
}

func (s *countingSink) EmitEvent(context.Context, string, string, string) { s.events++ }
func (s *countingSink) EmitPageview(context.Context, string)              { s.pageviews++ }

func runScan(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	logger := log.With(log.NewStdLogger(cmd.ErrOrStderr()), "cmd", "linkscan")
	results, err := scanPage(f, scanPageURL, scanVariant, logger)
	if err != nil {
		return err
	}

	if scanJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	return writeTable(cmd.OutOrStdout(), results)
}

func scanPage(r io.Reader, pageURL, variant string, logger log.Logger) ([]scanResult, error) {
	cfg, err := biz.PresetConfig(variant)
	if err != nil {
		return nil, err
	}

	page, err := binding.LoadPage(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	sink := &countingSink{}
	interceptor, err := biz.NewInterceptor(
		biz.NewClassifier(cfg, page.Host()),
		biz.NewRecordBuilder(cfg, page.BaseHref()),
		sink,
		biz.NewClientNavigator(),
		logger,
	)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	anchors := page.Anchors()
	results := make([]scanResult, 0, len(anchors))
	for _, attrs := range anchors {
		decision := interceptor.HandleClick(ctx, attrs)
		results = append(results, scanResult{
			Href:     attrs.Href,
			Category: decision.Category.String(),
			Record:   decision.Record,
		})
	}

	log.NewHelper(logger).Debugf("scanned %d anchors on %s: %d events, %d pageviews",
		len(results), pageURL, sink.events, sink.pageviews)
	return results, nil
}

func writeTable(w io.Writer, results []scanResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HREF\tCATEGORY\tEVENT CATEGORY\tACTION\tLABEL\tDESTINATION")
	for _, res := range results {
		if res.Record == nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\n", res.Href, res.Category)
			continue
		}
		rec := res.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", res.Href, res.Category, rec.Category, rec.Action, rec.Label, rec.Destination)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, results []scanResult) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}

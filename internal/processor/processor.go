package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/autotranslate/internal/batch"
	"codeberg.org/snonux/autotranslate/internal/translation"
)

// Options controls language pair, parallelism and where output goes
type Options struct {
	FromLang    string
	ToLang      string
	Concurrency int
	Out         io.Writer
	ErrOut      io.Writer
}

// Summary counts the outcome of a batch run
type Summary struct {
	Total      int
	Cached     int
	Translated int
	Empty      int
	Failed     int
}

type result struct {
	translation string
	cached      bool
	err         error
}

// Processor runs translation requests against a Translator and saves the
// dictionaries when done
type Processor struct {
	translator *translation.Translator
	opts       Options
}

// NewProcessor creates a new processor
func NewProcessor(t *translation.Translator, opts Options) *Processor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	return &Processor{translator: t, opts: opts}
}

// ProcessSingle translates one text, prints the result and saves
func (p *Processor) ProcessSingle(ctx context.Context, key, text string) (string, error) {
	if text == "" {
		text = key
	}

	translation, err := p.translator.TranslateText(ctx, key, text, p.opts.FromLang, p.opts.ToLang)
	if err != nil {
		return "", err
	}

	if translation == "" {
		fmt.Fprintf(p.opts.ErrOut, "No translation available for '%s'\n", key)
	} else {
		fmt.Fprintln(p.opts.Out, translation)
	}

	if err := p.translator.SaveDictionary(); err != nil {
		return translation, err
	}
	return translation, nil
}

// ProcessBatch translates all entries, up to Concurrency at a time. A
// failing entry is reported and does not stop the others. Results are
// printed in input order, followed by a summary. The dictionaries are saved
// even when some entries failed.
func (p *Processor) ProcessBatch(ctx context.Context, entries []batch.Entry) (Summary, error) {
	results := make([]result, len(entries))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			results[i] = p.translateEntry(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(entries)}
	for i, entry := range entries {
		r := results[i]
		switch {
		case r.err != nil:
			summary.Failed++
			fmt.Fprintf(p.opts.ErrOut, "Error translating '%s' (line %d): %v\n", entry.Key, entry.Line, r.err)
		case r.translation == "":
			summary.Empty++
			fmt.Fprintf(p.opts.ErrOut, "No translation available for '%s' (line %d)\n", entry.Key, entry.Line)
		default:
			if r.cached {
				summary.Cached++
			} else {
				summary.Translated++
			}
			fmt.Fprintf(p.opts.Out, "%s = %s\n", entry.Key, r.translation)
		}
	}

	p.printSummary(summary)

	if err := p.translator.SaveDictionary(); err != nil {
		return summary, err
	}
	if summary.Failed > 0 && errors.Is(ctx.Err(), context.Canceled) {
		return summary, ctx.Err()
	}
	return summary, nil
}

func (p *Processor) translateEntry(ctx context.Context, entry batch.Entry) result {
	if translation, ok := p.translator.FindInDictionary(entry.Key, p.opts.FromLang, p.opts.ToLang); ok {
		return result{translation: translation, cached: true}
	}

	translation, err := p.translator.TranslateText(ctx, entry.Key, entry.Text, p.opts.FromLang, p.opts.ToLang)
	return result{translation: translation, err: err}
}

func (p *Processor) printSummary(s Summary) {
	fmt.Fprintf(p.opts.Out, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(p.opts.Out, "Total entries: %d\n", s.Total)
	fmt.Fprintf(p.opts.Out, "From dictionary: %d\n", s.Cached)
	fmt.Fprintf(p.opts.Out, "Translated: %d\n", s.Translated)
	if s.Empty > 0 {
		fmt.Fprintf(p.opts.Out, "Without result: %d\n", s.Empty)
	}
	if s.Failed > 0 {
		fmt.Fprintf(p.opts.Out, "Errors: %d\n", s.Failed)
	}
	fmt.Fprintf(p.opts.Out, "=================================\n")
}

package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
)

type Options struct {
	// DetectSource runs language detection once before fanning out, so
	// every target shares the same source language.
	DetectSource bool
	// Concurrency bounds how many leaves of a shape translate at once.
	Concurrency int
}

// Pipeline turns one source string into every supported language.
type Pipeline struct {
	tr    Translator
	cache Cache
	log   *logger.Logger
	opts  Options
}

func NewPipeline(tr Translator, cache Cache, log *logger.Logger, opts Options) *Pipeline {
	return &Pipeline{tr: tr, cache: cache, log: log, opts: opts}
}

// Translate returns one value per target. A language whose call fails
// falls back to the source text. The error is non-nil only when ctx is
// done or no target could reach the provider at all.
func (p *Pipeline) Translate(ctx context.Context, text string, targets []locale.Language) (map[locale.Language]string, error) {
	out := make(map[locale.Language]string, len(targets))
	if strings.TrimSpace(text) == "" {
		for _, lang := range targets {
			out[lang] = ""
		}
		return out, nil
	}

	source := p.detect(ctx, text)

	results := make([]string, len(targets))
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, lang := range targets {
		if source != "" && source == lang.ProviderCode() {
			results[i] = text
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = p.translateOne(ctx, text, lang, source)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unreachable := 0
	for i, lang := range targets {
		if errs[i] == nil {
			out[lang] = results[i]
			continue
		}
		if errors.Is(errs[i], ErrUnreachable) {
			unreachable++
		}
		p.log.Warn("translation failed, keeping source text",
			"language", lang,
			"error", errs[i],
		)
		out[lang] = text
	}

	if len(targets) > 0 && unreachable == len(targets) {
		return nil, fmt.Errorf("%w: all %d languages failed", ErrUnreachable, len(targets))
	}
	return out, nil
}

// Text translates into every supported language.
func (p *Pipeline) Text(ctx context.Context, text string) (model.MultiLangText, error) {
	values, err := p.Translate(ctx, text, locale.Languages)
	if err != nil {
		return model.MultiLangText{}, err
	}
	var m model.MultiLangText
	for lang, v := range values {
		m.Set(lang, v)
	}
	return m, nil
}

// Leaf resolves a form field: localized input is kept as given, a source
// string is translated.
func (p *Pipeline) Leaf(ctx context.Context, in model.TextInput) (model.MultiLangText, error) {
	if !in.NeedsTranslation() {
		return *in.Values, nil
	}
	return p.Text(ctx, in.Source)
}

// Shape translates every leaf of root.
func (p *Pipeline) Shape(ctx context.Context, root Node) (Result, error) {
	return Walk(ctx, root, p.Leaf, p.opts.Concurrency)
}

func (p *Pipeline) detect(ctx context.Context, text string) string {
	if !p.opts.DetectSource {
		return ""
	}
	code, err := p.tr.Detect(ctx, text)
	if err != nil {
		p.log.Warn("language detection failed, letting provider detect", "error", err)
		return ""
	}
	return code
}

func (p *Pipeline) translateOne(ctx context.Context, text string, lang locale.Language, source string) (string, error) {
	key := CacheKey(text, lang, source)
	if p.cache != nil {
		v, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			p.log.Warn("translation cache read failed", "error", err)
		} else if ok {
			return v, nil
		}
	}

	translated, err := p.tr.Translate(ctx, text, lang, source)
	if err != nil {
		return "", err
	}
	translated = DecodeHTMLEntities(translated)

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, translated); err != nil {
			p.log.Warn("translation cache write failed", "error", err)
		}
	}
	return translated, nil
}

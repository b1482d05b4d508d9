package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteCoverage is returned when segments leave a part of the
// buffer uncovered or overlap each other
var ErrIncompleteCoverage = errors.New("segments do not cover the buffer")

// Assemble concatenates rendered segments in buffer order. Spans are only
// used to check that every byte of the buffer was accounted for. Uncovered
// bytes are copied as they are and reported with ErrIncompleteCoverage.
func Assemble(ctx context.Context, buffer string, segments []Segment, render func(Segment) string) (string, error) {
	var out strings.Builder
	out.Grow(len(buffer) * 2)

	err := assembleRange(ctx, buffer, 0, len(buffer), segments, render, &out)
	if err != nil && errors.Is(err, ctx.Err()) {
		return "", err
	}

	return out.String(), err
}

func assembleRange(ctx context.Context, buffer string, start int, end int, segments []Segment, render func(Segment) string, out *strings.Builder) error {
	var coverageErr error

	gap := func(from, to int) {
		tracer().Errorf("bytes %d..%d of the buffer are not covered", from, to)
		out.WriteString(buffer[from:to])
		if coverageErr == nil {
			coverageErr = fmt.Errorf("%w: bytes %d..%d", ErrIncompleteCoverage, from, to)
		}
	}

	position := start
	for _, seg := range segments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if seg.Span.Start < position {
			tracer().Errorf("segment %q overlaps the previous one", seg.Raw)
			if coverageErr == nil {
				coverageErr = fmt.Errorf("%w: segment at %d overlaps", ErrIncompleteCoverage, seg.Span.Start)
			}
			continue
		}
		if seg.Span.Start > position {
			gap(position, seg.Span.Start)
		}

		if seg.Class == SINGLISH_CLASS_QUOTED {
			open, openSize := getFirstCharacter(seg.Raw)
			closing, closeSize := getLastCharacter(seg.Raw)

			out.WriteString(open)
			err := assembleRange(ctx, buffer, seg.Span.Start+openSize, seg.Span.End-closeSize, seg.Inner, render, out)
			if err != nil {
				if errors.Is(err, ctx.Err()) {
					return err
				}
				if coverageErr == nil {
					coverageErr = err
				}
			}
			out.WriteString(closing)
		} else if seg.Passthrough() {
			out.WriteString(seg.Raw)
		} else {
			out.WriteString(render(seg))
		}

		position = seg.Span.End
	}

	if position < end {
		gap(position, end)
	}

	return coverageErr
}

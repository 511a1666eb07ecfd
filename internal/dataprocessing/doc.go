// Package dataprocessing implements the ingestion pipeline for the six
// operational sheet exports: a quote-aware delimited-text tokenizer, field
// normalizers, per-domain record mappers, the chargebacks section
// extractor, the grouping/rollup engine, and the date-range filter.
//
// The pipeline is deliberately non-failing: empty payloads, HTML error
// pages, short sheets and unparsable cells all degrade to empty structures
// or zero values. No function in this package returns an error for
// malformed input.
package dataprocessing

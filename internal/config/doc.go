// Package config builds the effective sanibundle configuration.
//
// The exclusion patterns and sensitive-key patterns ship as compiled-in
// defaults; they are carried as explicit values on Config so the
// pipeline and its tests receive them as parameters rather than reading
// hidden globals. The effective config is merged in fixed order:
// defaults <- environment (SANIBUNDLE_*) <- CLI flag overrides.
package config

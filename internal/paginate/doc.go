// Package paginate parses list queries (page, limit, sortBy, filter.<column>),
// constrains them with a per-resource Config, and builds the page envelope
// returned to clients.
//
// Sort and filter columns are only ever taken from the Config, never from
// the raw query, so a Plan is safe to translate into SQL identifiers.
package paginate

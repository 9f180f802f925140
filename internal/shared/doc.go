// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides log capture and market snapshot
// fixtures for tests of the loader, the filter engine, the exporter and the
// HTTP layer.
package shared

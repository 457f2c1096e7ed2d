// Package source supplies the dragon catalog to the store.
//
// A catalog reference selects where records come from:
//
//   - "" loads the built-in catalog embedded in the binary
//   - "http://..." or "https://..." fetches JSON over HTTP
//   - a path ending in ".toml" reads a TOML file of [[dragons]] tables
//   - any other path reads a JSON file
//
// JSON documents are either a bare array of records or an object with a
// "dragons" array. Every loader validates that IDs are present and unique
// before returning, since the store indexes records by ID.
//
// Loaders never touch the store. The app dispatches SetLoading, LoadCatalog
// and SetError around a Load call.
package source

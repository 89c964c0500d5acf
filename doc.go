// Package stockdash holds the data side of the stock dashboard: the typed
// client of the dashboard backend, the page loaders built on it, the
// extraction of net worth and profits from brokerage statement exports, the
// comparison of deposits with an index investment, and the number formatting
// shared by every view.
//
// Reproducible demo data lives in the seq package, dates and intervals in
// date, chart colours in palette, and the index options in indexes. The dash
// command line tool (see the cmd package) renders all of it as markdown.
package stockdash

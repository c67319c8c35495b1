// Package integrity provides consistency checks across the game-data
// store.
//
// Unlike the 'gamedata' package which resolves individual files on
// demand, this package sweeps the whole dataset and reports what a
// resolution would trip over.
//
// # Checks Provided
//
//   - Archives: every archive named by the location index exists on
//     disk, and every location fits inside its archive file.
//   - Coverage: every root entry resolves through the encoding table
//     and the location index, so a fetch for it could succeed.
package integrity

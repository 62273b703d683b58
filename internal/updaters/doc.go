// Package updaters contains the generic prop.Updater implementations shared
// by the component catalog.
//
// The String, Boolean and Number combinators follow one rule set:
//
//   - no matching dependency: use the independent state value and its
//     came_from_default flag;
//   - one dependency: adopt its value, converted to the prop type;
//   - several text dependencies: concatenate them in document order;
//   - several dependencies that cannot be concatenated (two booleans, say):
//     a fixed fallback, false for booleans.
//
// Inverting follows the same split. Several dependencies cannot be
// inverted from one value and yield prop.ErrCouldNotUpdate.
package updaters

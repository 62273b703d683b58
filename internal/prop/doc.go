// Package prop defines the contract between the engine and the component
// catalog: data queries, profiles, calculation results and the Updater
// interface. Values are cty.Value throughout.
package prop

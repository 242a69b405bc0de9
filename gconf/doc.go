/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension stores a single configuration entity under the "_c:<pkg>" key.
The configuration is loaded from the genesis file and may later be replaced by
the configuration owner.
*/
package gconf

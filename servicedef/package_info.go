// Package servicedef contains the routes and request bodies of the KAI API that the smoke
// tests use.
package servicedef

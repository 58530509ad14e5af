// Package client makes requests to the KAI API: it attaches the session token, encodes
// request bodies, unwraps the {"data": ...} response envelope, and turns failures into
// typed errors.
package client

// Package bws is a small HTTP/1.x origin server for static files.
//
// Each accepted connection carries exactly one request. The server reads
// the request head (never a body), answers GET, HEAD and TRACE, and closes
// the connection. Every other well-formed method is answered with 501.
//
// Highlights
//   - Line reading bounded by a 32 KiB line limit and a guard against
//     peers that stream NUL bytes instead of a request.
//   - Requests are resolved below a document root with index.html and
//     index.htm as default documents.
//   - HEAD responses, including error pages, never carry a body.
//   - A shared, serialized access log and plug-in Logger and Meter hooks.
//
// Quick start:
//
//	s := &bws.Server{Addr: ":8080", Root: "www", AccessLog: bws.NewAccessLog("access-log.txt")}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package bws

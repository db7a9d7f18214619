// Package httpstages provides pipeline stages for HTTP requests and JSON bodies.
//
// Use Get to perform a GET request against a fixed URL, ParseJSONTo to decode the
// response body, and IndentJSON to render a JSON value for output.
//
// Example pipeline: GET url → ParseJSONTo → ... → IndentJSON
//
//	p := &pipeline.Pipeline{
//	    Name: "gb-opcodes",
//	    Stages: []pipeline.Stage{
//	        httpstages.Get(nil, "https://gbdev.io/gb-opcodes/Opcodes.json"),
//	        httpstages.ParseJSONTo[opcodes.Document](),
//	        opcodes.LookupStage("unprefixed", "0x00"),
//	        httpstages.IndentJSON(4),
//	    },
//	}
//
// Failures are typed: *StatusError for a response other than 200 OK and
// *ParseError for a body that does not decode.
package httpstages

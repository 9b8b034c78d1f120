// Package api handles incoming HTTP requests, request validation, and
// response formatting. Handlers translate HTTP concerns into calls on the
// insights service and map its errors to status codes and safe messages.
package api

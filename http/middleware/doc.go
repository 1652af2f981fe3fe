/*
The middleware package defines what a middleware is in a storefront and a set of basic middlewares.

The available middlewares are:
  - Compress
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

ranger assembles the default chain, which looks like:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(env), // production and staging only
		middleware.InjectIPAddress(),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.CORS(origin),
		middleware.Compress(),
	}
*/
package middleware

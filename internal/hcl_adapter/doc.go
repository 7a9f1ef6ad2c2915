// Package hcl_adapter implements config.Loader for HCL files.
//
// A configuration file may contain any of the ranking, input, output and
// publish blocks. Expressions are evaluated with a single variable, env, an
// object holding the process environment, so values such as the publish URL
// can be taken from the environment:
//
//	publish {
//	  url = env.MENTIONRANK_PUBLISH_URL
//	}
package hcl_adapter

// Package env implements the harvested-population environment.
//
// A [Fishery] owns a population state and advances it one step at a time
// under a harvesting action, computing the reward and deciding whether
// the episode has ended, either because the step cap was reached or
// because the population collapsed below the extinction threshold:
//
//	f, err := env.New(env.DefaultParams())
//	obs := f.Reset(0, nil)
//	for {
//	    obs, reward, done, _ = f.Step(dynamo.Control{0.1})
//	    if done {
//	        break
//	    }
//	}
//
// Actions and observations outside their [Box] are clipped rather than
// rejected; only the configuration is validated, once, in [New].
//
// A Fishery is not safe for concurrent use. Independent instances share
// nothing and can run in parallel.
package env

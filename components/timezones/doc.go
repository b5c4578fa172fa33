// Package timezones provides a "timezone" custom validator that accepts IANA
// zone names such as "Europe/Madrid". Zone data is embedded through
// time/tzdata, so validation does not depend on the host's zoneinfo.
//
// Register the validator on the registry passed to the orchestrator:
//
//	customs := ruleset.NewCustomRegistry()
//	if err := timezones.Register(customs); err != nil {
//		return err
//	}
//	orch := orchestrator.New(orchestrator.WithCustoms(customs))
//
// and reference it from a rule file with `custom: timezone`.
package timezones

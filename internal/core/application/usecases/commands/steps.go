package commands

import (
	"checkout/internal/core/domain/model/step"
)

// instanceByName finds a session's instance by step name, nil when absent.
func instanceByName(instances []*step.Instance, name string) *step.Instance {
	for _, instance := range instances {
		if instance.StepName() == name {
			return instance
		}
	}
	return nil
}

// instanceByOrder finds a session's instance by funnel position, nil when
// absent.
func instanceByOrder(instances []*step.Instance, order int) *step.Instance {
	for _, instance := range instances {
		if instance.Order() == order {
			return instance
		}
	}
	return nil
}

// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings, as read from the planner configuration file. Factories decode the
// settings into typed structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[metrics.PlanningRecorder]()
//	reg.Register("prometheus", func(conf map[string]any) (metrics.PlanningRecorder, error) {
//	    var c struct{ Namespace string `json:"namespace"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newSink(c.Namespace), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "prometheus"})
package factory

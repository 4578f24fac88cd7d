// Package wired adds declarative property injection to a service container.
//
// A class marks properties for injection with a Marker. When the container is
// built, every service whose class embeds Injector gets a setup sequence
// composed from the class's injection plan:
//
//	injectProperty("logger", @log)       // by name, in declaration order
//	injectProperty("store", @app.Storage) // by type, in declaration order
//	injectParameters(@container)
//	injectionCompleted()
//	...                                   // author-declared setup calls
//
// At runtime the embedded Injector guards the sequence: every property is
// injected at most once and nothing is injected after injectionCompleted.
// Classes that implement InjectionCompleter are notified once injection ends.
//
// Classes are usually described by code generated with the wired command,
// which reads //wired:: annotations from Go source.
package wired

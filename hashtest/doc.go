// Package hashtest provides reusable store contract tests for
// hashcore.Store implementations.
//
// External driver modules can use this package from their own tests without
// importing the root package's test helpers.
//
// Example pattern (driver module test):
//
//	func TestMyStoreContract(t *testing.T) {
//		store := newMyStore(t)
//		hashtest.RunStoreContract(t, store, hashtest.Options{
//			CaseName: t.Name(),
//		})
//	}
package hashtest

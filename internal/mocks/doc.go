// Package mocks provides centralized mock implementations for testing.
//
// Each mock records its calls under a mutex and either returns the default
// values set on the struct or delegates to an optional function field:
//
//	gen := &mocks.MockGenerator{
//	    GenerateFn: func(ctx context.Context, phrase string) (*domain.ContentRecord, error) {
//	        return nil, generation.ErrInvalidResponse
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks

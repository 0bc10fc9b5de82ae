// Package resolve turns a variant selection into an activated capability
// set.
//
// Resolution is pure and deterministic: the same selection against the same
// table always yields an equal [Activation] with the same fingerprint. A
// build may include exactly one peripheral-access package; naming two
// different variants in one build fails with [ErrConflictingVariants], since
// their register maps and vector tables would collide.
//
// # Example
//
//	act, err := resolve.Resolve(resolve.Selection{Variant: "sam3x8e", WantsRuntime: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(act.Tags)      // {GenerationB, PackageClass2, RuntimePresence}
//	fmt.Println(act.GoFlags()) // -tags=sam3x8e,sam3x,sam3_e,rt
package resolve

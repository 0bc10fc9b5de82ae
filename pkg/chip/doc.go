// Package chip holds the descriptor table of supported SAM3 parts.
//
// The table is a closed world: every supported part number is listed once,
// with its intrinsic capability tags, its physical facts (pin count, PIO
// controllers, peripheral IDs) and a handle to its peripheral-access package
// (PAC). Nothing is discovered at run time.
//
// # Shipped Parts
//
//	part     generation  package  pins  PIO       runtime
//	sam3a4c  sam3a       sam3_c   100   A-B       yes
//	sam3a8c  sam3a       sam3_c   100   A-B       yes
//	sam3x4c  sam3x       sam3_c   100   A-B       yes
//	sam3x4e  sam3x       sam3_e   144   A-D       yes
//	sam3x8c  sam3x       sam3_c   100   A-B       yes
//	sam3x8e  sam3x       sam3_e   144   A-D       yes
//	sam3x8h  sam3x       sam3_e   217   A-F       no
//
// Use [Describe] and [All] against the default table, or build an
// alternative table with [NewTable] or [ParseTableYAML].
package chip

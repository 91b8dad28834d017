// Package nusolve solves for the transverse momentum of the neutrino in a
// t → b W(→ ℓν) decay, given a hypothesis for the neutrino pseudorapidity η
// and the top, b and W masses.
//
// Algorithm Outline:
//  1. Boost-adjusted energies under η:
//     E′ = E·cosh η − pz·sinh η, for the lepton and the b-jet.
//  2. Eliminating the neutrino pt between the W and top mass constraints
//     gives a linear relation px = A·py + B with
//     den = px_b·E′_ℓ − px_ℓ·E′_b
//     A   = (py_ℓ·E′_b − py_b·E′_ℓ) / den
//     α   = m_t² − m_W² − m_b² − 2·(ℓ·b)
//     B   = (E′_ℓ·α − E′_b·m_W²) / (−2·den)
//  3. Substituting into the W on-shell condition yields
//     C·py² + D·py + F = 0 with
//     par1 = (px_ℓ·A + py_ℓ)/E′_ℓ,  C = A² + 1 − par1²
//     par2 = (m_W²/2 + px_ℓ·B)/E′_ℓ, D = 2·(A·B − par2·par1), F = B² − par2²
//  4. The quadratic is solved in complex arithmetic, always: two roots
//     exist for every input and are real exactly when the discriminant is
//     non-negative. Complex roots are physically unrealisable; the caller
//     filters them. Solve never inspects the discriminant's sign.
//  5. px = A·py + B for both roots.
//
// den == 0 produces Inf/NaN, which downstream reality checks reject.
//
// Complexity: O(1) per hypothesis; SolveBatch is a branch-free loop.
package nusolve

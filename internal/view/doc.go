// Package view derives what the board shows from an issue collection.
//
// Everything here is a pure function of its inputs. Callers capture now once
// per render and pass it down, so a single frame never mixes two notions of
// "today".
//
// Ordering uses PriorityScore = severity*10 - whole days since creation +
// manual rank, descending, with newer issues first on ties. The sort is
// stable: issues sharing both score and creation time keep their input order,
// so sorting the same input twice yields the same sequence.
//
// Filter is an order-preserving subsequence. Search folds case (Unicode-aware,
// via golang.org/x/text/cases) and matches titles and tags by substring;
// assignee and severity match exactly.
package view

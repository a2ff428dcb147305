// Package aurora provides the types and operations of a local-first planner
// for a Canada aurora trip. All data lives on the device, it is read once when
// the planner opens and rewritten after every change.
//
// The core functionalities include:
//   - Itinerary: a Schedule of ordered entries per trip date, edited through a
//     Store (add, edit, remove with confirmation, reorder, swap adjacent days).
//   - Expenses: a Ledger of spendings in CAD or TWD, with totals and a
//     per-category breakdown at a fixed exchange rate.
//   - Checklist: to-do, packing and shopping lists.
//   - Bookings: the static flights and stays, hidden behind a PIN Gate.
//   - Conversion: CAD to TWD including the sales taxes of a Region.
//   - Export: the itinerary as an iCalendar document and map search links.
//
// A Session ties the features to a Storage and holds the selected date. This
// package is the foundation of the `aurora` command-line tool.
package aurora

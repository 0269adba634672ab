package order

// NotFound is the status reported for unknown order ids.
const NotFound = "Order not found"

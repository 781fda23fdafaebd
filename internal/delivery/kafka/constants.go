package kafka

const (
	TopicCouponRedeemed = "coupon.redeemed"
	TopicStockLow       = "stock.low"
	TopicDLQSuffix      = ".dlq"

	ErrorHeaderKey = "x-error"
)

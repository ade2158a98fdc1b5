package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"DONATION_CHECKOUT_GO/internal/analytics"
	"DONATION_CHECKOUT_GO/internal/checkout"
	"DONATION_CHECKOUT_GO/internal/config"
	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/dynamo"
	"DONATION_CHECKOUT_GO/internal/flags"
	"DONATION_CHECKOUT_GO/internal/handlers"
	"DONATION_CHECKOUT_GO/internal/methods"
	"DONATION_CHECKOUT_GO/internal/modal"
	"DONATION_CHECKOUT_GO/internal/router"
	"DONATION_CHECKOUT_GO/internal/session"
	"DONATION_CHECKOUT_GO/internal/stripeclient"
	"DONATION_CHECKOUT_GO/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar config: %v", err)
	}

	logger := utils.NewLogger().With(map[string]interface{}{"env": cfg.Env})

	var (
		flagStore flags.Store    = flags.NewEnvStore("FEATURE_FLAGS")
		sink      analytics.Sink = analytics.LogSink{Log: logger}
		qrSource  methods.AssetSource
		awsCfg    aws.Config
	)

	if cfg.NeedsAWS() {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AwsRegion))
		if err != nil {
			log.Fatalf("Erro ao carregar config AWS: %v", err)
		}
	}
	if cfg.FlagsTableName != "" {
		store := dynamo.New(dynamodb.NewFromConfig(awsCfg), cfg.FlagsTableName)
		flagStore = dynamo.NewFlagStore(store)
	}
	if cfg.AnalyticsQueueURL != "" {
		sqsSink := analytics.NewSQSSink(sqs.NewFromConfig(awsCfg), cfg.AnalyticsQueueURL, logger)
		sink = analytics.Multi{sink, sqsSink}
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	switch {
	case cfg.QR.Bucket != "":
		qrSource = methods.S3Source{Client: s3.NewFromConfig(awsCfg), Bucket: cfg.QR.Bucket, Key: cfg.QR.Key}
	case cfg.QR.ImageURL != "":
		qrSource = methods.HTTPSource{Client: httpClient, URL: cfg.QR.ImageURL}
	}

	wallet := methods.DefaultCatalogue()
	if cfg.WalletCatalogue != "" {
		wallet, err = methods.ParseCatalogue(cfg.WalletCatalogue)
		if err != nil {
			log.Fatalf("Erro ao carregar catalogo de carteiras: %v", err)
		}
	}

	template := modal.Template{
		Deps: modal.Deps{
			Sink:     sink,
			Log:      logger,
			Bank:     cfg.Bank,
			QR:       cfg.QR,
			QRSource: qrSource,
			Wallet:   wallet,
			Checkout: checkout.Deps{
				SDK:      stripeclient.Loader{},
				Currency: cfg.Currency,
			},
			Confirm: confirm.Options{ReturnURL: cfg.ReturnURL()},
		},
		FlagStore:       flagStore,
		ConfigEndpoints: cfg.ConfigEndpoints,
		IntentEndpoints: cfg.IntentEndpoints,
		Client:          httpClient,
	}

	registry := session.NewRegistry(template.New, session.DefaultTTL, logger)
	h := handlers.NewHandler(registry, logger)
	muxRouter := router.New(h)

	if cfg.LocalAddr != "" {
		logger.Info("servidor_local", map[string]interface{}{"addr": cfg.LocalAddr})
		log.Fatal(http.ListenAndServe(cfg.LocalAddr, muxRouter))
	}

	adapter := httpadapter.NewV2(muxRouter)

	handler := func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var apiEvent events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &apiEvent); err == nil {
			if apiEvent.RequestContext.HTTP.Method != "" {
				return adapter.ProxyWithContext(ctx, apiEvent)
			}
		}

		logger.Error("evento_nao_reconhecido", map[string]interface{}{})
		return map[string]string{"status": "ignored"}, nil
	}

	lambda.Start(handler)
}
